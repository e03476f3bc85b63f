// Command ssiform renders SSi controller schemas as HTML forms or terminal
// prompts, decodes submissions into register values and serves forms over
// HTTP.
package main

func main() {
	execute()
}
