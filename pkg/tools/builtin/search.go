package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/dexora-ai/dexora/pkg/tools"
)

type SearchFilesArgs struct {
	Query string `json:"query" jsonschema:"The search query or keywords to find relevant files"`
}

func (t *EnterpriseTools) searchFiles(_ context.Context, args SearchFilesArgs) (*tools.ToolCallResult, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", tools.ErrInvalidArguments)
	}

	result := t.searcher.Search(query)
	return rendered(ComponentFileSearch, result.Summary(), result), nil
}

func (t *EnterpriseTools) searchFilesTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameSearchFiles,
		Description: "Activate this tool when users want to search for files, find documents, look up medical records, search patient files, or query their uploaded documents. Responds to phrases like 'search files', 'find document', 'look for file', 'search my records', 'find medical records', 'search for lab results', or any file search requests.",
		Parameters:  tools.MustSchemaFor[SearchFilesArgs](),
		Examples:    []string{"search files", "find document", "look for file", "search my records", "find medical records", "search for lab results"},
		Handler:     tools.NewHandler(t.searchFiles),
	}
}
