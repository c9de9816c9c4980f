package symbols

// PyQueries is the combined scope/definition/reference/assignment/return
// query for Python, emitting capture names that match
// pkg/capture.PythonConfig's vocabulary.
//
// As in javascript.go, every definition/reference pattern binds each
// capture name to exactly one (innermost) node; context extractors walk
// upward from there for anything living on the enclosing construct.
//
// Grounded on DeusData-codebase-memory-mcp's lang.LanguageSpec node-type
// tables for Python (function_definition/class_definition/module/call),
// extended with assignment, global/nonlocal, and dunder-all patterns the
// catalog tool never needed.
const PyQueries = `
; ============================================================================
; Scopes
; ============================================================================

(module) @scope.module
(function_definition) @scope.function
(class_definition) @scope.class
(lambda) @scope.closure

; ============================================================================
; Definitions
; ============================================================================

(function_definition
  name: (identifier) @def.function
)

(class_definition
  name: (identifier) @def.class
)

(class_definition
  body: (block
    (function_definition
      name: (identifier) @def.method
    )
  )
)

(class_definition
  body: (block
    (function_definition
      name: (identifier) @def.constructor
      (#eq? @def.constructor "__init__"))
  )
)

(parameters
  (identifier) @def.parameter
)

(typed_parameter
  (identifier) @def.parameter
)

(default_parameter
  name: (identifier) @def.parameter
)

(assignment
  left: (identifier) @def.variable
)

(decorator) @def.decorator

; ============================================================================
; References
; ============================================================================

(call
  function: (identifier) @ref.call
)

(call
  function: (attribute
    attribute: (identifier) @ref.call)
)

(attribute
  attribute: (identifier) @ref.attribute
)

(identifier) @ref.identifier

(global_statement
  (identifier) @ref.global
)

(nonlocal_statement
  (identifier) @ref.nonlocal
)

; ============================================================================
; Assignments & Returns
; ============================================================================

(assignment
  left: (identifier) @assignment.target
  right: (_)
)

(return_statement
  (_) @return.value
)

; ============================================================================
; Imports & Exports
; ============================================================================

(import_statement
  name: (dotted_name) @import.module
)

(import_from_statement
  module_name: (dotted_name) @import.from
)

(import_from_statement
  (wildcard_import) @import.wildcard
)

(expression_statement
  (assignment
    left: (identifier) @export.dunder_all
    (#eq? @export.dunder_all "__all__"))
)
`
