package capture

// RustConfig is the capture_name → entry table for Rust, grounded on the
// tree-sitter-rust grammar's node vocabulary as registered in
// DeusData-codebase-memory-mcp's internal/lang/rust.go, generalized to
// cover struct/impl/trait splits.
var RustConfig = Config{
	"scope.module":   {Category: CategoryScope, Entity: EntityModule},
	"scope.function": {Category: CategoryScope, Entity: EntityFunction},
	"scope.struct":   {Category: CategoryScope, Entity: EntityClass},
	"scope.impl":     {Category: CategoryScope, Entity: EntityClass},
	"scope.trait":    {Category: CategoryScope, Entity: EntityInterface},
	"scope.block":    {Category: CategoryScope, Entity: EntityBlock},

	"def.struct":    {Category: CategoryDefinition, Entity: EntityClass, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.enum":      {Category: CategoryDefinition, Entity: EntityEnum, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.trait":     {Category: CategoryDefinition, Entity: EntityInterface, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.impl_fn":   {Category: CategoryDefinition, Entity: EntityMethod, ModifierExtractors: []ModifierExtractor{modIsStatic}, ContextExtractors: []ContextExtractor{ctxEnclosingRange, ctxImplType}},
	"def.function":  {Category: CategoryDefinition, Entity: EntityFunction, ContextExtractors: []ContextExtractor{ctxEnclosingRange}},
	"def.field":     {Category: CategoryDefinition, Entity: EntityField, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.parameter": {Category: CategoryDefinition, Entity: EntityParameter, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"def.variable":  {Category: CategoryDefinition, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxTypeName}},

	"ref.call": {
		Category:           CategoryReference,
		Entity:             EntityCall,
		ModifierExtractors: []ModifierExtractor{modIsConstructor},
		ContextExtractors:  []ContextExtractor{ctxReceiver, ctxPropertyChain},
	},
	"ref.scoped_call": { // Type::method(...)
		Category: CategoryReference, Entity: EntityCall,
		ContextExtractors: []ContextExtractor{ctxConstructTarget},
	},
	"ref.field":      {Category: CategoryReference, Entity: EntityField, ContextExtractors: []ContextExtractor{ctxReceiver, ctxPropertyChain}},
	"ref.identifier": {Category: CategoryReference, Entity: EntityVariable},

	"assignment.target": {Category: CategoryAssignment, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxTypeName}},
	"return.value":      {Category: CategoryReturn, Entity: EntityVariable, ContextExtractors: []ContextExtractor{ctxReturnType}},

	"import.use":       {Category: CategoryImport, Entity: EntityImport, ContextExtractors: []ContextExtractor{ctxSource}},
	"import.use_group": {Category: CategoryImport, Entity: EntityImport, ContextExtractors: []ContextExtractor{ctxSource}},

	"export.pub": {Category: CategoryExport, Entity: EntityVariable},
}
