package imports

// TSQueries extends JSQueries with TypeScript's type-only import/export
// forms (import type / export type), plus interface/enum/type-alias
// exports, using the capture.TypeScriptConfig-only "import.namespace.ts"
// key for type-only namespace-shaped imports. As in javascript.go, each
// capture name binds to exactly one (innermost) node.
const TSQueries = JSQueries + `
; ============================================================================
; Type-only imports
; ============================================================================

(import_statement
  "type"
  (import_clause
    (named_imports
      (import_specifier
        name: (identifier) @import.namespace.ts
      )
    )
  )
)

(import_specifier
  "type"
  name: (identifier) @import.namespace.ts
)

; ============================================================================
; Type-level exports
; ============================================================================

(export_statement
  declaration: (interface_declaration
    name: (type_identifier) @export.named
  )
)

(export_statement
  declaration: (type_alias_declaration
    name: (type_identifier) @export.named
  )
)

(export_statement
  declaration: (enum_declaration
    name: (identifier) @export.named
  )
)

(export_statement
  declaration: (class_declaration
    name: (type_identifier) @export.named
  )
)
`
