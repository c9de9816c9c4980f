package capture

// TypeScriptConfig extends JavaScriptConfig with interface, enum,
// namespace, and type-alias captures, matching the
// pkg/parser/queries/symbols/typescript.go and
// pkg/parser/queries/types/typescript.go tables, which already layer TS
// type-annotation queries over the JS grammar's shared constructs.
var TypeScriptConfig = buildTypeScriptConfig()

func buildTypeScriptConfig() Config {
	cfg := make(Config, len(JavaScriptConfig)+16)
	for k, v := range JavaScriptConfig {
		cfg[k] = v
	}

	cfg["scope.interface"] = CaptureEntry{Category: CategoryScope, Entity: EntityInterface}
	cfg["scope.enum"] = CaptureEntry{Category: CategoryScope, Entity: EntityEnum}
	cfg["scope.namespace"] = CaptureEntry{Category: CategoryScope, Entity: EntityNamespace}

	cfg["def.interface"] = CaptureEntry{Category: CategoryDefinition, Entity: EntityInterface, ContextExtractors: []ContextExtractor{ctxEnclosingRange}}
	cfg["def.enum"] = CaptureEntry{Category: CategoryDefinition, Entity: EntityEnum, ContextExtractors: []ContextExtractor{ctxEnclosingRange}}
	cfg["def.namespace"] = CaptureEntry{Category: CategoryDefinition, Entity: EntityNamespace, ContextExtractors: []ContextExtractor{ctxEnclosingRange}}
	cfg["def.type_alias"] = CaptureEntry{Category: CategoryDefinition, Entity: EntityTypeAlias, ContextExtractors: []ContextExtractor{ctxEnclosingRange}}
	cfg["def.interface_method"] = CaptureEntry{Category: CategoryDefinition, Entity: EntityMethod, ContextExtractors: []ContextExtractor{ctxEnclosingRange}}
	cfg["def.decorator"] = CaptureEntry{Category: CategoryDecorator, Entity: EntityDecorator}

	cfg["ref.type"] = CaptureEntry{Category: CategoryReference, Entity: EntityTypeAlias, ContextExtractors: []ContextExtractor{ctxTypeName}}
	cfg["ref.optional_member"] = CaptureEntry{
		Category: CategoryReference, Entity: EntityProperty,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_optional_chain", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxReceiver, ctxPropertyChain},
	}

	cfg["import.namespace.ts"] = CaptureEntry{
		Category: CategoryImport, Entity: EntityImport,
		ModifierExtractors: []ModifierExtractor{func(Node) (string, ModifierValue, bool) { return "is_namespace", BoolModifier(true), true }},
		ContextExtractors:  []ContextExtractor{ctxSource},
	}

	return cfg
}
