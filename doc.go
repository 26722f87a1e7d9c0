// Package raster2d provides a simple 2D graphics library for Go.
//
// # Overview
//
// raster2d is a Pure Go 2D graphics library inspired by fogleman/gg and designed
// to integrate with the GoGPU ecosystem. It provides an immediate-mode drawing
// API similar to HTML Canvas, rendered in software on the CPU.
//
// # Quick Start
//
//	import "github.com/gogpu/raster2d"
//
//	// Create a drawing context (dc = drawing context convention)
//	dc := raster2d.NewContext(512, 512)
//
//	// Draw shapes
//	dc.SetRGB(1, 0, 0)
//	dc.DrawCircle(256, 256, 100)
//	dc.Fill()
//
//	// Save to PNG
//	dc.SavePNG("output.png")
//
// # API Compatibility
//
// The API is designed to be compatible with fogleman/gg for easy migration.
// Most fogleman/gg code should work with minimal changes.
//
// # Renderers
//
// The library includes a software rasterizer. It has no GPU renderer; a
// different Renderer can be supplied with WithRenderer.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Path, Paint, Matrix, Point
//   - Internal: raster (scanline), path (tessellation), blend (compositing)
//   - Renderers: software
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases clockwise on screen (from +X toward +Y)
//
// # Performance
//
// The software renderer prioritizes correctness.
package raster2d
