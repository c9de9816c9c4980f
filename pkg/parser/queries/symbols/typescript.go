package symbols

// TSQueries is the combined scope/definition/reference/assignment/return
// query for TypeScript, built on top of JSQueries' node patterns (TypeScript
// is a superset grammar) and extended with the capture.TypeScriptConfig-only
// vocabulary: interfaces, enums, namespaces, type aliases and type references.
//
// Capture names match pkg/capture.TypeScriptConfig's keys directly. As in
// javascript.go, a capture name binds to exactly one (innermost) node.
const TSQueries = JSQueries + `
; ============================================================================
; Interfaces, Enums, Namespaces (TypeScript-only scopes/defs)
; ============================================================================

(interface_declaration
  name: (type_identifier) @def.interface
) @scope.interface

(interface_declaration
  body: (interface_body
    (method_signature
      name: (property_identifier) @def.interface_method
    )
  )
)

(enum_declaration
  name: (identifier) @def.enum
) @scope.enum

(internal_module
  name: (identifier) @def.namespace
) @scope.namespace

(type_alias_declaration
  name: (type_identifier) @def.type_alias
)

; class declarations in TS name via type_identifier, not identifier
(class_declaration
  name: (type_identifier) @def.class
)

; ============================================================================
; Type references
; ============================================================================

(type_annotation
  (type_identifier) @ref.type
)

(type_annotation
  (generic_type
    name: (type_identifier) @ref.type)
)

(member_expression
  optional_chain: "?."
  property: (property_identifier) @ref.optional_member
)

; ============================================================================
; Decorators
; ============================================================================

(decorator) @def.decorator
`
