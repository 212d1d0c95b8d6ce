// Command powerball-results scrapes the latest Powerball drawing and keeps a
// local history of results.
package main

import "github.com/pfrederiksen/powerball-results/internal/cli"

func main() {
	cli.Execute()
}
