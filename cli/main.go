// Command lumid is the terminal client for the Lumid chat server.
package main

func main() {
	Execute()
}
