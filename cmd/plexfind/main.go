// Command plexfind searches a Plex Media Server library with plain-language
// queries or structured filters.
package main

func main() {
	Execute()
}
