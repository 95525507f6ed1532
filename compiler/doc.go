/*
Package compiler runs the instruction combiner over textual gate listings.

	gate listing text ->
		parse ->
	syntax tree (ast) ->
		load ->
	gate graph (gate) ->
		combine sweeps ->
	gate graph ->
		format ->
	gate listing text

*/
package compiler
