package capture

// JavaScriptConfig is the capture_name → entry table for JavaScript,
// matching pkg/parser/queries/symbols/javascript.go and
// pkg/parser/queries/imports/javascript.go's capture naming (e.g.
// "function.name", "class.name", "call.definition"), generalized from a
// flat Symbol extraction into the full normalized-capture shape.
var JavaScriptConfig = Config{
	"scope.module":      {Category: CategoryScope, Entity: EntityModule},
	"scope.function":    {Category: CategoryScope, Entity: EntityFunction, ModifierExtractors: []ModifierExtractor{modIsAsync}},
	"scope.closure":     {Category: CategoryScope, Entity: EntityClosure, ModifierExtractors: []ModifierExtractor{modIsAsync}},
	"scope.method":      {Category: CategoryScope, Entity: EntityMethod, ModifierExtractors: []ModifierExtractor{modIsStatic, modIsAsync}},
	"scope.constructor": {Category: CategoryScope, Entity: EntityConstructor},
	"scope.class":       {Category: CategoryScope, Entity: EntityClass},
	"scope.block":       {Category: CategoryScope, Entity: EntityBlock},

	"def.class":       {Category: CategoryDefinition, Entity: EntityClass, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.function":    {Category: CategoryDefinition, Entity: EntityFunction, ModifierExtractors: []ModifierExtractor{modIsAsync}, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.method":      {Category: CategoryDefinition, Entity: EntityMethod, ModifierExtractors: []ModifierExtractor{modIsStatic, modIsAsync}, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.constructor": {Category: CategoryDefinition, Entity: EntityConstructor, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.property":    {Category: CategoryDefinition, Entity: EntityProperty, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.parameter":   {Category: CategoryDefinition, Entity: EntityParameter, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.variable":    {Category: CategoryDefinition, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.const":       {Category: CategoryDefinition, Entity: EntityConstant, ContextExtractors: []ContextExtractor{ctxTypeName}},

	"ref.call": {
		Category:           CategoryReference,
		Entity:             EntityCall,
		ModifierExtractors: []ModifierExtractor{modIsConstructor},
		ContextExtractors:  []ContextExtractor{ctxReceiver, ctxPropertyChain},
	},
	"ref.new": {
		Category: CategoryReference, Entity: EntityCall,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_constructor", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxConstructTarget},
	},
	"ref.member":   {Category: CategoryReference, Entity: EntityProperty, ContextExtractors: []ContextExtractor{ctxReceiver, ctxPropertyChain}},
	"ref.variable": {Category: CategoryReference, Entity: EntityVariable},
	"ref.super":    {Category: CategoryReference, Entity: EntitySuper},
	"ref.this":     {Category: CategoryReference, Entity: EntityThis},

	"assignment.target": {Category: CategoryAssignment, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"return.value":      {Category: CategoryReturn, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxReturnType}},

	"import.named": {Category: CategoryImport, Entity: EntityImport, ContextExtractors: []ContextExtractor{ctxSource}},
	"import.default": {
		Category: CategoryImport, Entity: EntityImport,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_default", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxSource},
	},
	"import.namespace": {
		Category: CategoryImport, Entity: EntityImport,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_namespace", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxSource},
	},

	"export.named": {Category: CategoryExport, Entity: EntityVariable},
	"export.default": {
		Category: CategoryExport, Entity: EntityVariable,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_default", BoolModifier(true), true }},
	},
	"export.reexport": {
		Category: CategoryExport, Entity: EntityVariable,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_reexport", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxSource},
	},
}
