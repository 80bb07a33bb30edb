// Command readmark converts web pages into clean Markdown.
package main

func main() {
	Execute()
}
