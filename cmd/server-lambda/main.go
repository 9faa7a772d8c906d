package main

import (
	"context"
	"log"

	"github.com/JaybhanTomar/ats-pro-app/app"
	"github.com/JaybhanTomar/ats-pro-app/app/config"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

var ginLambda *ginadapter.GinLambda

// init runs once per Lambda container (cold start)
func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := app.MustOpenDB(cfg)

	gen, err := app.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("failed to initialize gemini client: %v", err)
	}

	api := app.NewAPI(db, cfg, gen)
	api.InitStripe()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}

	ginLambda = ginadapter.New(router)
}

// Handler is the Lambda entrypoint for API Gateway proxy integration.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
