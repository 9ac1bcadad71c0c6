// Package catalog holds the metadata model for processing functions: the
// closed set of parameter descriptors and the registry the rest of the
// engine consumes them from.
//
// A catalog entry describes one annotator, importer, exporter, installer
// or model-builder function purely through its parameter list. Each
// parameter carries either a Descriptor, declaring what file or context
// value the parameter stands for, or a plain literal default. The task
// builder compiles these declarations into concrete input/output sets
// without ever calling the function itself.
package catalog
