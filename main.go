package main

import "syncBoard/cmd/app"

func main() {
	app.GetApp().LetsGo()
}
