/*
Package strategy decides how presentation and activation settings flow down
an entry tree.

A Strategy is consulted at every node with the inherited traversal State and
the node's own partial configuration:

  - Apply finalizes the node's configuration.
  - Context and Entry resolve the settings attached to the node's records.
  - Extend yields the configuration that seeds the children's State.

Two variants exist. Fixed layers the same static overrides at every depth and
is the default. Incrementing raises budget priority and search range by a
fixed delta per level; presets such as Character or Note are Incrementing
instances with different default data.

Strategies compare by identity, not value: each constructor assigns a unique
ID, and two independently built presets are unrelated even when configured
identically. Share one instance across nodes to make them cooperate.
*/
package strategy
