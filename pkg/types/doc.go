// Package types defines the configuration, entity types, run options and
// standard errors shared by the quizimport packages.
package types
