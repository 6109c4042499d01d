// Package healthcare declares the AWS architecture of the Healthcare AI
// Assistant.
//
// The declaration is fixed: [Architecture] always returns the same clusters,
// nodes and edges in the same order, so rendering it twice produces the same
// diagram.
package healthcare

import (
	"fmt"

	"github.com/matzehuels/archdiagram/pkg/diagram"
)

const (
	// Title is the diagram title.
	Title = "Healthcare AI Assistant Architecture"

	// Filename is the output path without extension.
	Filename = "generated-diagrams/healthcare-ai-architecture"
)

// Options returns the presentation options of the architecture diagram.
func Options() diagram.Options {
	return diagram.Options{
		Direction: diagram.LeftToRight,
		GraphAttr: diagram.Attrs{
			"fontsize": "12",
			"bgcolor":  "white",
			"pad":      "0.5",
		},
		Filename: Filename,
		Format:   "png",
	}
}

// Architecture declares the diagram.
func Architecture() (*diagram.Diagram, error) {
	b := diagram.NewBuilder(Title, Options())

	// Users
	b.Node("healthcare_pro", "Healthcare\nProfessional", diagram.CategoryClient, "onprem.client.User")
	b.Node("patient", "Patient", diagram.CategoryClient, "onprem.client.User")

	b.Cluster("frontend", "Frontend Layer", func() {
		b.Node("cloudfront", "CloudFront CDN", diagram.CategoryNetwork, "aws.network.CloudFront")
		b.Node("s3_web", "Web App\n(React/Vue)", diagram.CategoryStorage, "aws.storage.S3")
	})

	// Security
	b.Node("waf", "WAF", diagram.CategorySecurity, "aws.security.WAF")
	b.Node("cognito", "Cognito\nAuth", diagram.CategorySecurity, "aws.security.Cognito")

	// API
	b.Node("api_gateway", "API Gateway", diagram.CategoryNetwork, "aws.network.APIGateway")
	b.Node("appsync", "GraphQL API", diagram.CategoryIntegration, "aws.integration.Appsync")

	b.Cluster("application", "Application Layer (Serverless)", func() {
		b.Node("lambda_clinical", "Clinical\nSummarizer", diagram.CategoryCompute, "aws.compute.Lambda")
		b.Node("lambda_patient", "Patient\nNavigator", diagram.CategoryCompute, "aws.compute.Lambda")
		b.Node("lambda_docs", "Documentation\nAssistant", diagram.CategoryCompute, "aws.compute.Lambda")
	})

	b.Cluster("ai_ml", "AI/ML Services", func() {
		b.Node("bedrock", "Amazon Bedrock\n(Claude/Titan)", diagram.CategoryML, "aws.ml.Bedrock")
		b.Node("sagemaker", "SageMaker\nCustom Models", diagram.CategoryML, "aws.ml.Sagemaker")
		b.Node("comprehend", "Comprehend\nMedical", diagram.CategoryML, "aws.ml.Comprehend")
	})

	b.Cluster("data", "Data Storage", func() {
		b.Node("dynamodb", "DynamoDB\nSessions/Audit", diagram.CategoryDatabase, "aws.database.Dynamodb")
		b.Node("s3_data", "S3\nKnowledge Base", diagram.CategoryStorage, "aws.storage.S3")
		b.Node("rds", "Aurora RDS\nTemplates", diagram.CategoryDatabase, "aws.database.RDS")
	})

	b.Cluster("monitoring", "Monitoring & Compliance", func() {
		b.Node("cloudwatch", "CloudWatch", diagram.CategoryManagement, "aws.management.Cloudwatch")
		b.Node("cloudtrail", "CloudTrail", diagram.CategoryManagement, "aws.management.Cloudtrail")
		b.Node("guardduty", "GuardDuty", diagram.CategorySecurity, "aws.security.Guardduty")
	})

	b.Cluster("external", "External Medical Sources", func() {
		b.Node("pubmed", "PubMed API", diagram.CategoryGeneral, "aws.general.InternetGateway")
		b.Node("medical_db", "Medical DBs", diagram.CategoryGeneral, "aws.general.InternetGateway")
	})

	lambdas := []string{"lambda_clinical", "lambda_patient", "lambda_docs"}

	// User flows
	b.Connect("healthcare_pro", "cloudfront")
	b.Connect("patient", "cloudfront")
	b.Connect("cloudfront", "s3_web")

	// Security flow
	b.Chain("s3_web", "waf", "api_gateway")
	b.Connect("api_gateway", "cognito")

	// API routing
	b.Connect("api_gateway", "appsync")
	b.FanOut("appsync", lambdas...)

	// AI/ML integration
	b.FanIn("bedrock", lambdas...)
	b.Connect("lambda_clinical", "sagemaker")
	b.Connect("lambda_clinical", "comprehend")

	// Data access
	b.FanIn("dynamodb", lambdas...)
	b.Connect("lambda_clinical", "s3_data")
	b.Connect("lambda_patient", "s3_data")
	b.Connect("lambda_docs", "rds")

	// External data sources
	b.ConnectLabeled("lambda_clinical", "pubmed", "Fetch Literature")
	b.ConnectLabeled("lambda_clinical", "medical_db", "Query Guidelines")

	// Security monitoring
	b.Connect("api_gateway", "guardduty")
	b.FanIn("cloudtrail", lambdas...)

	// Monitoring
	b.FanIn("cloudwatch", lambdas...)

	return b.Build()
}

// Layer is one line of the architecture overview.
type Layer struct {
	Name       string
	Components string
}

// Overview returns the architecture overview printed after a successful render.
func Overview() []Layer {
	return []Layer{
		{"Frontend", "CloudFront + S3 static website"},
		{"Security", "WAF + Cognito + GuardDuty"},
		{"API", "API Gateway + AppSync GraphQL"},
		{"Compute", "3 Lambda functions (serverless)"},
		{"AI/ML", "Bedrock + SageMaker + Comprehend Medical"},
		{"Storage", "DynamoDB + S3 + Aurora RDS"},
		{"Monitoring", "CloudWatch + CloudTrail"},
	}
}

// Summary returns the plain-text confirmation lines for a diagram written
// to path.
func Summary(path string) []string {
	lines := []string{
		"✓ Architecture diagram generated successfully!",
		"✓ File saved as: " + path,
		"",
		"Architecture Overview:",
	}
	for _, l := range Overview() {
		lines = append(lines, fmt.Sprintf("- %s: %s", l.Name, l.Components))
	}
	return lines
}
