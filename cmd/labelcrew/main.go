// Command labelcrew generates persona documents for a music label's AI team.
package main

func main() {
	Execute()
}
