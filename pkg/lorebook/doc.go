// Package lorebook holds the output data model: the resolved presentation and
// activation configuration attached to each entry, the partial overrides that
// authors and strategies layer on top of each other, and the serializable
// lorebook document itself.
package lorebook
