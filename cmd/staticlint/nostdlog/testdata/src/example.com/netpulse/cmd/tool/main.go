package main

import "log"

func main() {
	log.Println("tools may use the standard logger")
}
