/*
Package ports defines the driven ports (interfaces) around the lorebook builder.

These interfaces decouple the compile pipeline from where author trees come
from, where text blocks live and where finished lorebooks are stored.

# Key Interfaces

  - TreeLoader: produces a Project (e.g., from a YAML file or from memory).
  - TextSource: resolves text references to text blocks (e.g., from a Loam vault).
  - LorebookStore: persists serialized lorebooks (e.g., to the filesystem).
*/
package ports
