// Command prefab builds, inspects and validates rhythm-game prefabs.
package main

import "github.com/papapumpkin/prefab/cmd"

func main() {
	cmd.Execute()
}
