// plistutil reads, queries and edits property list files.
package main

import "github.com/thirteen37/plistutil/internal/cmd"

func main() {
	cmd.Execute()
}
