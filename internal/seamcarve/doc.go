// Package seamcarve narrows images by content-aware seam removal.
//
// Each iteration converts the working colour buffer to luminance, derives an
// energy map from its Sobel gradient, finds the cheapest 8-connected
// top-to-bottom path (a seam) by dynamic programming and deletes that path
// from the colour buffer. The energy map is rebuilt from scratch every
// iteration because deleting a column changes the gradients of its
// neighbours.
//
// Only width reduction is supported. Each step picks the cheapest seam for
// the current image; the sequence as a whole is greedy, not a global optimum.
package seamcarve
