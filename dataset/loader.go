package dataset

import (
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/mlhousing/pkg/errors"
	"github.com/YuminosukeSato/mlhousing/pkg/log"
)

// LoadCSV reads the housing table from the CSV file at dir/file.
//
// The path is resolved to an absolute path before opening so that the
// caller's working directory never changes and log records identify the
// exact file read. Numeric columns are forced to float64 regardless of
// how gota would detect them; empty cells and the usual NA spellings
// parse as NaN so that missing total_bedrooms values survive loading
// and reach the imputer.
func LoadCSV(dir, file string) (dataframe.DataFrame, error) {
	const op = "dataset.LoadCSV"

	path, err := filepath.Abs(filepath.Join(dir, file))
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "%s: resolving path for %s", op, file)
	}

	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "%s: opening %s", op, path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.NaNValues([]string{"", "NA", "NaN", "null"}),
		dataframe.WithTypes(map[string]series.Type{
			ColLongitude:        series.Float,
			ColLatitude:         series.Float,
			ColHousingMedianAge: series.Float,
			ColTotalRooms:       series.Float,
			ColTotalBedrooms:    series.Float,
			ColPopulation:       series.Float,
			ColHouseholds:       series.Float,
			ColMedianIncome:     series.Float,
			ColMedianHouseValue: series.Float,
			ColOceanProximity:   series.String,
		}),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(df.Err, "%s: parsing %s", op, path)
	}

	if err := CheckColumns(df, RequiredColumns()...); err != nil {
		return dataframe.DataFrame{}, err
	}

	log.GetLoggerWithName("dataset").Info("Input table loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.SamplesKey, df.Nrow(),
		log.FeaturesKey, df.Ncol(),
	)
	return df, nil
}

// CheckColumns verifies that every named column exists in the frame.
func CheckColumns(df dataframe.DataFrame, cols ...string) error {
	have := make(map[string]struct{}, df.Ncol())
	for _, name := range df.Names() {
		have[name] = struct{}{}
	}
	for _, c := range cols {
		if _, ok := have[c]; !ok {
			return errors.NewMissingColumnError("dataset.CheckColumns", c, df.Names())
		}
	}
	return nil
}
