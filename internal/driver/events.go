package driver

// FileStats — агрегаты по одному разобранному файлу.
type FileStats struct {
	Lines      int
	Syllables  int
	DurationMs uint32
	Speakers   []string
}

// CheckEvent is emitted once per processed file so progress UIs can
// render without waiting for the whole directory.
type CheckEvent struct {
	Path   string
	Index  int // порядковый номер обработки, с 1
	Total  int
	Broken bool
	Cached bool
	Errors int
	Stats  FileStats
}
