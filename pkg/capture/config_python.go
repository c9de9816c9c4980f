package capture

// PythonConfig is the capture_name → entry table for Python, grounded on
// the tree-sitter-python grammar's node vocabulary as registered in
// DeusData-codebase-memory-mcp's internal/lang/python.go
// (function_definition, class_definition, call, import_statement,
// import_from_statement) and generalized into the normalized shape.
var PythonConfig = Config{
	"scope.module":   {Category: CategoryScope, Entity: EntityModule},
	"scope.function": {Category: CategoryScope, Entity: EntityFunction, ModifierExtractors: []ModifierExtractor{modIsAsync}},
	"scope.class":    {Category: CategoryScope, Entity: EntityClass},
	"scope.block":    {Category: CategoryScope, Entity: EntityBlock},

	"def.class":       {Category: CategoryDefinition, Entity: EntityClass, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.function":    {Category: CategoryDefinition, Entity: EntityFunction, ModifierExtractors: []ModifierExtractor{modIsAsync}, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.method":      {Category: CategoryDefinition, Entity: EntityMethod, ModifierExtractors: []ModifierExtractor{modIsStatic, modIsAsync}, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.constructor": {Category: CategoryDefinition, Entity: EntityConstructor, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.parameter":   {Category: CategoryDefinition, Entity: EntityParameter, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.variable":    {Category: CategoryDefinition, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.decorator":   {Category: CategoryDecorator, Entity: EntityDecorator},

	"ref.call": {
		Category:           CategoryReference,
		Entity:             EntityCall,
		ModifierExtractors: []ModifierExtractor{modIsConstructor},
		ContextExtractors:  []ContextExtractor{ctxReceiver, ctxPropertyChain},
	},
	"ref.attribute":  {Category: CategoryReference, Entity: EntityProperty, ContextExtractors: []ContextExtractor{ctxReceiver, ctxPropertyChain}},
	"ref.identifier": {Category: CategoryReference, Entity: EntityVariable},
	"ref.global":     {Category: CategoryReference, Entity: EntityVariable, ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_global", BoolModifier(true), true }}},
	"ref.nonlocal":   {Category: CategoryReference, Entity: EntityVariable, ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_nonlocal", BoolModifier(true), true }}},

	"assignment.target": {Category: CategoryAssignment, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"return.value":      {Category: CategoryReturn, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxReturnType}},

	"import.module": {Category: CategoryImport, Entity: EntityImport, ContextExtractors: []ContextExtractor{ctxSource}},
	"import.from":   {Category: CategoryImport, Entity: EntityImport, ContextExtractors: []ContextExtractor{ctxSource}},
	"import.wildcard": {
		Category: CategoryImport, Entity: EntityImport,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_namespace", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxSource},
	},

	"export.dunder_all": {Category: CategoryExport, Entity: EntityVariable},
}
