package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"decisionnet/internal/app"
	"decisionnet/internal/decision"
	"decisionnet/internal/transport/decidedto"
)

type Handler struct {
	svc app.DecideService
}

func NewHandler(svc app.DecideService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Decide(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := readBody(req)
	if err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid body", "details": err.Error()}), nil
	}

	var in decidedto.DecideRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()}), nil
	}

	if in.Debug {
		out, trace, info, err := h.svc.DecideWithTraceAndOptions(in.StructureDOT, in.Evidence, in.Options())
		if err != nil {
			return jsonResp(http.StatusBadRequest, decideErrorBody(err, trace, info)), nil
		}
		return jsonResp(http.StatusOK, decidedto.DecideResponse{Decision: out, Trace: trace, Model: info}), nil
	}

	out, info, err := h.svc.DecideWithOptions(in.StructureDOT, in.Evidence, in.Options())
	if err != nil {
		return jsonResp(http.StatusBadRequest, decideErrorBody(err, nil, info)), nil
	}
	return jsonResp(http.StatusOK, decidedto.DecideResponse{Decision: out, Model: info}), nil
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(b),
	}
}

func decideErrorBody(err error, trace *decision.Trace, info *app.ModelInfo) map[string]any {
	body := map[string]any{
		"error":   "decide failed",
		"details": err.Error(),
	}
	if trace != nil {
		body["trace"] = trace
	}
	if info != nil {
		body["model"] = info
	}
	return body
}
