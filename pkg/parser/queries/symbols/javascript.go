package symbols

// JSQueries is the combined scope/definition/reference/assignment/return
// query for JavaScript, emitting capture names that match
// pkg/capture.JavaScriptConfig's vocabulary directly (no separate
// category/field parsing step — the whole capture name is the config
// key), so the capture normalizer's table lookup applies unchanged.
//
// Every definition/reference pattern captures exactly one node per
// capture name — the innermost name/identifier node, never also the
// enclosing declaration — since tree-sitter emits one capture per bound
// node and a name reused on both would surface as two competing
// captures per match. Context extractors that need the surrounding
// construct (ctxEnclosingRange, ctxReceiver, ctxTypeName, ...) walk
// upward from that node themselves.
//
// Built on the original symbol-query node patterns
// (function_declaration/class_declaration/method_definition/
// variable_declarator matching), extended with call/assignment/return/
// scope patterns a call graph requires.
const JSQueries = `
; ============================================================================
; Scopes
; ============================================================================

(program) @scope.module

(function_declaration) @scope.function
(function_expression) @scope.closure
(arrow_function) @scope.closure
(generator_function_declaration) @scope.function
(class_declaration) @scope.class
(class) @scope.class
(method_definition
  name: (property_identifier) @_ctor (#eq? @_ctor "constructor")
) @scope.constructor
(method_definition
  name: (property_identifier) @_m (#not-eq? @_m "constructor")
) @scope.method
(class_body) @scope.block
(statement_block) @scope.block

; ============================================================================
; Definitions
; ============================================================================

(function_declaration
  name: (identifier) @def.function
)

(variable_declarator
  name: (identifier) @def.function
  value: (function_expression)
)

(variable_declarator
  name: (identifier) @def.variable
  value: (arrow_function)
)

(generator_function_declaration
  name: (identifier) @def.function
)

(class_declaration
  name: (identifier) @def.class
)

(variable_declarator
  name: (identifier) @def.class
  value: (class)
)

(method_definition
  name: (property_identifier) @def.constructor
  (#eq? @def.constructor "constructor")
)

(method_definition
  name: (property_identifier) @def.method
  (#not-eq? @def.method "constructor")
)

(lexical_declaration
  (variable_declarator
    name: (identifier) @def.variable
  )
)

(variable_declaration
  (variable_declarator
    name: (identifier) @def.variable
  )
)

(required_parameter
  pattern: (identifier) @def.parameter
)

(formal_parameters
  (identifier) @def.parameter
)

(public_field_definition
  name: (property_identifier) @def.property
)

; ============================================================================
; References
; ============================================================================

(call_expression
  function: (identifier) @ref.call
)

(call_expression
  function: (member_expression
    property: (property_identifier) @ref.call)
)

(new_expression
  constructor: (_) @ref.new
)

(member_expression
  property: (property_identifier) @ref.member
)

(super) @ref.super
(this) @ref.this

(identifier) @ref.variable

; ============================================================================
; Assignments & Returns
; ============================================================================

(assignment_expression
  left: (identifier) @assignment.target
)

(variable_declarator
  name: (identifier) @assignment.target
  value: (_)
)

(return_statement
  (_) @return.value
)

; ============================================================================
; Decorators
; ============================================================================

(decorator) @def.decorator
`
