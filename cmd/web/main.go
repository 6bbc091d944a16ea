package main

import "deployhub_backend/internal/app"

func main() {
	app.Run()
}
