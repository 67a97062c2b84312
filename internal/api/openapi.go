package api

import (
	"fmt"

	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/pkg/openapi"
)

// buildSpecJSON assembles the OpenAPI document for the cases API and
// serializes it once at startup. The handler serves the cached bytes.
func buildSpecJSON(cfg *config.Config) ([]byte, error) {
	spec := buildSpec(cfg)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	return data, nil
}

func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	spec.SetDescription(cfg.API.Docs.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(caseSchemas())

	base := "/cases"
	spec.Paths[base] = &openapi.PathItem{
		Get:  listCases(),
		Post: uploadCase(),
	}
	spec.Paths[base+"/batch"] = &openapi.PathItem{
		Post: uploadBatch(),
	}
	spec.Paths[base+"/search"] = &openapi.PathItem{
		Post: searchCases(),
	}
	spec.Paths[base+"/{id}"] = &openapi.PathItem{
		Get:    findCase(),
		Delete: deleteCase(),
	}
	spec.Paths[base+"/{id}/image"] = &openapi.PathItem{
		Get: caseImage(),
	}
	spec.Paths[base+"/{id}/process"] = &openapi.PathItem{
		Post: processCase(),
	}
	spec.Paths[base+"/{id}/report"] = &openapi.PathItem{
		Get: caseReport(),
	}

	return spec
}

func caseSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Case": {
			Type:        "object",
			Description: "A registered cheque with its intake metadata and latest processing outcome",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"label":            {Type: "string", Description: "Short identifier derived from the case id", Example: "cheque-1a2b3c4d"},
				"filename":         {Type: "string", Example: "cheque-0042.png"},
				"content_type":     {Type: "string", Example: "image/png"},
				"size_bytes":       {Type: "integer", Format: "int64"},
				"page_count":       {Type: "integer", Description: "Page count for PDF uploads, null for images"},
				"storage_key":      {Type: "string", Description: "Blob storage key of the original upload"},
				"status":           {Type: "string", Enum: []any{"received", "processing", "approved", "rejected", "manual_review"}},
				"decision":         {Type: "string", Description: "Workflow decision, null until processed"},
				"feedback":         {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"extracted_fields": {Type: "object", Description: "Fields read from the cheque image"},
				"fraud_detected":   {Type: "boolean"},
				"anomaly_count":    {Type: "integer"},
				"audit_log":        {Type: "object", Description: "Per-stage audit trail of the latest run"},
				"audit_summary":    {Type: "string"},
				"lien_advised":     {Type: "boolean"},
				"lien_reason":      {Type: "string"},
				"received_at":      {Type: "string", Format: "date-time"},
				"processed_at":     {Type: "string", Format: "date-time"},
				"updated_at":       {Type: "string", Format: "date-time"},
			},
		},
		"CasePage": {
			Type:        "object",
			Description: "One page of cases with pagination metadata",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Case")},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"CaseFilters": {
			Type:        "object",
			Description: "Filter criteria for case listings",
			Properties: map[string]*openapi.Schema{
				"status":         {Type: "string", Example: "approved"},
				"decision":       {Type: "string"},
				"filename":       {Type: "string", Description: "Substring match"},
				"label":          {Type: "string", Description: "Substring match"},
				"content_type":   {Type: "string"},
				"fraud_detected": {Type: "boolean"},
				"lien_advised":   {Type: "boolean"},
			},
		},
		"SearchRequest": {
			Type:        "object",
			Description: "Pagination combined with filter criteria",
			Properties: map[string]*openapi.Schema{
				"page":           {Type: "integer", Example: 1},
				"page_size":      {Type: "integer", Example: 20},
				"search":         {Type: "string", Description: "Matches label and filename"},
				"sort":           {Type: "string", Example: "label,-receivedAt"},
				"status":         {Type: "string"},
				"decision":       {Type: "string"},
				"filename":       {Type: "string"},
				"label":          {Type: "string"},
				"content_type":   {Type: "string"},
				"fraud_detected": {Type: "boolean"},
				"lien_advised":   {Type: "boolean"},
			},
		},
		"BatchResult": {
			Type:        "object",
			Description: "Per-file outcome of a batch upload",
			Properties: map[string]*openapi.Schema{
				"case":     openapi.SchemaRef("Case"),
				"filename": {Type: "string"},
				"error":    {Type: "string", Description: "Set when this file failed intake"},
			},
		},
		"Report": {
			Type:        "object",
			Description: "Processing digest for a completed case",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"label":            {Type: "string"},
				"filename":         {Type: "string"},
				"status":           {Type: "string"},
				"decision":         {Type: "string"},
				"feedback":         {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"extracted_fields": {Type: "object"},
				"checks": {
					Type:  "array",
					Items: openapi.SchemaRef("CheckRow"),
				},
				"anomaly_count": {Type: "integer"},
				"audit_summary": {Type: "string"},
				"lien_advised":  {Type: "boolean"},
				"lien_reason":   {Type: "string"},
				"processed_at":  {Type: "string", Format: "date-time"},
			},
		},
		"CheckRow": {
			Type:        "object",
			Description: "A single verification check from the workflow run",
			Properties: map[string]*openapi.Schema{
				"name":    {Type: "string", Example: "signature"},
				"passed":  {Type: "boolean"},
				"details": {Type: "string"},
			},
		},
	}
}

func listParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Matches label and filename", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
		openapi.QueryParam("status", "string", "Filter by lifecycle status", false),
		openapi.QueryParam("decision", "string", "Filter by workflow decision", false),
		openapi.QueryParam("filename", "string", "Filter by filename substring", false),
		openapi.QueryParam("label", "string", "Filter by label substring", false),
		openapi.QueryParam("content_type", "string", "Filter by content type", false),
		openapi.QueryParam("fraud_detected", "boolean", "Filter by fraud flag", false),
		openapi.QueryParam("lien_advised", "boolean", "Filter by lien advice flag", false),
	}
}

func listCases() *openapi.Operation {
	return &openapi.Operation{
		Summary:    "List cases",
		Tags:       []string{"cases"},
		Parameters: listParams(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("A page of cases", "CasePage"),
		},
	}
}

func uploadCase() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Upload a cheque",
		Description: "Registers a single cheque file and stores the original blob. PDFs are rendered to a raster image at intake.",
		Tags:        []string{"cases"},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Format: "binary"},
						},
						Required: []string{"file"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("The registered case", "Case"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			413: {Description: "Upload exceeds the configured size limit"},
			415: {Description: "Not a supported cheque format"},
		},
	}
}

func uploadBatch() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Upload several cheques",
		Description: "Registers each file under the files field independently and reports a per-file outcome.",
		Tags:        []string{"cases"},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"files": {
								Type:  "array",
								Items: &openapi.Schema{Type: "string", Format: "binary"},
							},
						},
						Required: []string{"files"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Per-file results in upload order",
				Content: map[string]*openapi.MediaType{
					"application/json": {
						Schema: &openapi.Schema{
							Type:  "array",
							Items: openapi.SchemaRef("BatchResult"),
						},
					},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "Upload exceeds the configured size limit"},
		},
	}
}

func searchCases() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Search cases",
		Description: "Accepts pagination and filter criteria in the request body.",
		Tags:        []string{"cases"},
		RequestBody: openapi.RequestBodyJSON("SearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("A page of matching cases", "CasePage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	}
}

func findCase() *openapi.Operation {
	return &openapi.Operation{
		Summary:    "Get a case",
		Tags:       []string{"cases"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Case id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("The case", "Case"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}

func deleteCase() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Delete a case",
		Description: "Removes the case record and its stored blob.",
		Tags:        []string{"cases"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Case id")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Case deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}

func caseImage() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Download the original cheque",
		Description: "Streams the blob as stored at intake with its original content type.",
		Tags:        []string{"cases"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Case id")},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "The original file",
				Content: map[string]*openapi.MediaType{
					"application/octet-stream": {
						Schema: &openapi.Schema{Type: "string", Format: "binary"},
					},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}

func processCase() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Process a case",
		Description: "Runs the stored cheque through the decision workflow. Reprocessing overwrites the prior outcome.",
		Tags:        []string{"cases"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Case id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("The case with its fresh outcome", "Case"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	}
}

func caseReport() *openapi.Operation {
	return &openapi.Operation{
		Summary:    "Get the processing report",
		Tags:       []string{"cases"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Case id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("The processing digest", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: {Description: "Case has not been processed yet"},
		},
	}
}
