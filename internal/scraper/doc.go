// Package scraper fetches the Powerball results page and extracts draw results from it.
//
// The page markup is not guaranteed, so every field is located by an ordered list of
// strategies: a primary structural selector scoped to the expected page region, followed
// by fallbacks such as document-wide selectors, label text searches and free-text scans.
// Each field fails soft, and a bounded retry loop re-runs fetch and extraction until a
// complete result is obtained or the attempt budget is spent.
package scraper
