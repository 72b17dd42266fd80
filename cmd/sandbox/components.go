package main

import "image/color"

type Position struct {
	X, Y float32
}

type Velocity struct {
	X, Y float32
}

type Sprite struct {
	Radius float32
	Color  [3]uint8
}

func (s Sprite) RGBA() color.RGBA {
	return color.RGBA{s.Color[0], s.Color[1], s.Color[2], 255}
}

// Lifetime destroys its owner once Remaining reaches zero.
type Lifetime struct {
	Remaining float64
}

// Emitter spawns a particle every Interval seconds.
type Emitter struct {
	Interval float64
	Elapsed  float64
	Speed    float32
	Life     float64
}

var pastelColors = [][3]uint8{
	{255, 179, 186},
	{179, 229, 252},
	{255, 223, 186},
	{186, 255, 201},
	{255, 200, 221},
	{186, 225, 255},
	{255, 255, 186},
	{217, 186, 255},
}
