package builtin

import (
	"context"

	"github.com/dexora-ai/dexora/pkg/appointment"
	"github.com/dexora-ai/dexora/pkg/documents"
	"github.com/dexora-ai/dexora/pkg/tools"
)

func (t *EnterpriseTools) uploadDocumentsTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameUploadEnterpriseDocuments,
		Description: "Activate this tool when users need to upload or share documents, files, images, or any content for analysis. Responds to phrases like 'upload document', 'share file', 'analyze document', 'scan document', 'upload image', 'discover insights', or any request involving document/file submission for enterprise analysis.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"upload document", "share file", "analyze document", "scan document", "upload image", "discover insights"},
		Handler: tools.NewHandler(func(context.Context, noArgs) (*tools.ToolCallResult, error) {
			return rendered(ComponentDropFiles, "Displaying a file upload interface for enterprise document analysis", documents.NewCatalog()), nil
		}),
	}
}

func (t *EnterpriseTools) appointmentTool() tools.Tool {
	return tools.Tool{
		Name:        tools.NameAppointmentScheduling,
		Description: "Activate this tool when users want to schedule an appointment. Responds to phrases like 'schedule appointment', 'book appointment', 'appointment', 'book a meeting', or 'schedule a meeting'.",
		Parameters:  tools.MustSchemaFor[noArgs](),
		Examples:    []string{"schedule appointment", "book appointment", "appointment", "book a meeting", "schedule a meeting"},
		Handler: tools.NewHandler(func(context.Context, noArgs) (*tools.ToolCallResult, error) {
			return rendered(ComponentAppointmentScheduling, "Displaying appointment scheduling interface", appointment.NewForm()), nil
		}),
	}
}
