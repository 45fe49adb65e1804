// Package main is the entry point for the FightSight CV service.
//
// @title          FightSight CV Service
// @version        0.1.0
// @description    Computer Vision analysis using MediaPipe
// @BasePath       /
// @schemes        http
package main

func main() {
	Execute()
}
