package main

import "github.com/mealweek/mealweek-cli/cmd/mealweek"

func main() {
	mealweek.Execute()
}
