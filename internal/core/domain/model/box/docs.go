// Package box provides the shipping box configuration entity. Boxes carry
// inner dimensions, an optional weight limit, tare weight, and a priority
// used to break ties during selection.
package box
