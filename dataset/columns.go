// Package dataset loads the California housing census table and bridges
// between gota data frames and gonum matrices.
package dataset

// Column names of the raw housing table as distributed with the
// California census extract. Derived and intermediate column names used
// later in the pipeline are declared alongside so every stage shares
// one vocabulary.
const (
	ColLongitude        = "longitude"
	ColLatitude         = "latitude"
	ColHousingMedianAge = "housing_median_age"
	ColTotalRooms       = "total_rooms"
	ColTotalBedrooms    = "total_bedrooms"
	ColPopulation       = "population"
	ColHouseholds       = "households"
	ColMedianIncome     = "median_income"
	ColMedianHouseValue = "median_house_value"
	ColOceanProximity   = "ocean_proximity"

	// ColIncomeCat holds the ordinal income category used only for the
	// stratified split. It is dropped before feature engineering.
	ColIncomeCat = "income_cat"

	// Ratio features derived during feature engineering.
	ColRoomsPerHousehold      = "rooms_per_household"
	ColBedroomsPerRoom        = "bedrooms_per_room"
	ColPopulationPerHousehold = "population_per_household"
)

// RequiredColumns returns the columns the preprocessing pipeline depends
// on. Input tables may carry additional numeric columns (longitude,
// latitude, housing_median_age in the census extract); those flow through
// imputation untouched.
func RequiredColumns() []string {
	return []string{
		ColMedianIncome,
		ColTotalRooms,
		ColTotalBedrooms,
		ColHouseholds,
		ColPopulation,
		ColOceanProximity,
		ColMedianHouseValue,
	}
}
