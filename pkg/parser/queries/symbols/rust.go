package symbols

// RustQueries is the combined scope/definition/reference/assignment/return
// query for Rust, emitting capture names that match
// pkg/capture.RustConfig's vocabulary.
//
// As in javascript.go, every definition/reference pattern binds each
// capture name to exactly one (innermost) node; context extractors walk
// upward from there for anything living on the enclosing construct.
//
// Grounded on DeusData-codebase-memory-mcp's lang.LanguageSpec node-type
// tables for Rust (function_item/struct_item/impl_item/call_expression),
// extended with the struct/impl scope split and use-path import patterns
// the catalog tool never needed.
const RustQueries = `
; ============================================================================
; Scopes
; ============================================================================

(source_file) @scope.module
(mod_item) @scope.module
(function_item) @scope.function
(closure_expression) @scope.closure
(struct_item) @scope.struct
(impl_item) @scope.impl
(trait_item) @scope.trait
(block) @scope.block

; ============================================================================
; Definitions
; ============================================================================

(function_item
  name: (identifier) @def.function
)

(struct_item
  name: (type_identifier) @def.struct
)

(enum_item
  name: (type_identifier) @def.enum
)

(trait_item
  name: (type_identifier) @def.trait
)

(impl_item
  type: (type_identifier)
) @scope.impl

(impl_item
  body: (declaration_list
    (function_item
      name: (identifier) @def.impl_fn
    )
  )
)

(field_declaration
  name: (field_identifier) @def.field
)

(parameter
  pattern: (identifier) @def.parameter
)

(let_declaration
  pattern: (identifier) @def.variable
)

; ============================================================================
; References
; ============================================================================

(call_expression
  function: (identifier) @ref.call
)

(call_expression
  function: (field_expression
    field: (field_identifier) @ref.call)
)

(call_expression
  function: (scoped_identifier
    path: (type_identifier) @ref.scoped_call_type
    name: (identifier) @ref.scoped_call)
)

(field_expression
  field: (field_identifier) @ref.field
)

(identifier) @ref.identifier

; ============================================================================
; Assignments & Returns
; ============================================================================

(let_declaration
  pattern: (identifier) @assignment.target
  value: (_)
)

(assignment_expression
  left: (identifier) @assignment.target
)

(return_expression
  (_) @return.value
)

; ============================================================================
; Imports & Exports
; ============================================================================

(use_declaration
  argument: (scoped_identifier) @import.use
)

(use_declaration
  argument: (use_list) @import.use_group
)

(use_declaration
  argument: (scoped_use_list) @import.use_group
)

(visibility_modifier) @export.pub
`
