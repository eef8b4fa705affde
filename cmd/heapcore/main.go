// Command heapcore inspects the heapcore heap and string views from the
// command line.
package main

func main() {
	execute()
}
