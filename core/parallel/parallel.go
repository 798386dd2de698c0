// Package parallel は独立した作業の分割実行を提供する。
//
// パイプライン本体は逐次実行だが、互いに依存しない出力ファイルの
// 書き出しのような箇所では範囲分割した並列実行を使う。
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize はitems個の作業をCPUコア数までのワーカーに範囲分割し、
// 各ワーカーでfn(start, end)を実行して全員の完了を待つ。
// fnは自分の範囲以外に書き込んではならない
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	// 切り上げ除算で1ワーカーあたりの担当数を決める
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold はitemsがthresholdを超えるときだけ並列化し、
// それ以下なら同じゴルーチンでfn(0, items)を一度だけ呼ぶ。
// 小さなテーブルでゴルーチン起動コストが支配的になるのを避ける
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
