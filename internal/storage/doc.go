// Package storage persists scrape results as JSON files.
//
// Two files are kept in the data directory: the latest snapshot
// (resultados_actuales.json by default), overwritten on every successful run, and
// the history (historico_resultados.json), a newest-first array that grows by at
// most one record per run. A missing history file is treated as empty.
package storage
