// Package tabular holds the TabularReader implementations, one package per
// file format. Each reader turns a structured corpus file into a
// domain.Table with normalised column names.
package tabular
