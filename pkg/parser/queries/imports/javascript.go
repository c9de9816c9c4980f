package imports

// JSQueries is the import/export query for JavaScript, emitting capture
// names that match pkg/capture.JavaScriptConfig's import.*/export.*
// vocabulary directly. As in pkg/parser/queries/symbols, each capture name
// binds to exactly one (innermost) node — never also the statement that
// encloses it — so a single match never produces two competing captures
// under the same name.
//
// Covers named, default, and namespace imports; named, default, and
// reexport exports; and the CommonJS require()/module.exports patterns,
// all under the capture-name scheme pkg/capture.JavaScriptConfig expects.
const JSQueries = `
; ============================================================================
; ES module imports
; ============================================================================

(import_specifier
  name: (identifier) @import.named
)

(import_statement
  (import_clause
    (identifier) @import.default
  )
)

(import_statement
  (import_clause
    (namespace_import
      (identifier) @import.namespace
    )
  )
)

(import_statement
  source: (string (string_fragment) @import.source)
)

; ============================================================================
; ES module exports
; ============================================================================

(export_statement
  declaration: (function_declaration
    name: (identifier) @export.named
  )
)

(export_statement
  declaration: (class_declaration
    name: (identifier) @export.named
  )
)

(export_statement
  declaration: (lexical_declaration
    (variable_declarator
      name: (identifier) @export.named
    )
  )
)

(export_specifier
  name: (identifier) @export.named
)

(export_statement
  value: (_) @export.default
)

(export_statement
  source: (string (string_fragment) @export.reexport)
)

; ============================================================================
; CommonJS (require / module.exports) treated as namespace import / export
; ============================================================================

(variable_declarator
  name: (identifier) @import.namespace
  value: (call_expression
    function: (identifier) @_require (#eq? @_require "require")
  )
)

(assignment_expression
  left: (member_expression
    object: (identifier) @_module (#eq? @_module "module")
    property: (property_identifier) @_exports (#eq? @_exports "exports")
  )
) @export.default

(assignment_expression
  left: (member_expression
    object: (identifier) @_exports (#eq? @_exports "exports")
    property: (property_identifier) @export.named
  )
)
`
