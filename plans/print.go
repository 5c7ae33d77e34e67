package plans

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"solenne/db"
	"solenne/models"
	"solenne/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func hmacSecret() []byte {
	if s := os.Getenv("PLAN_QR_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("solenne-plan-secret")
}

// signedPlanPayload returns planid|date|time|signature for venue-side
// verification of a printed plan.
func signedPlanPayload(plan models.ScheduledPlan) string {
	data := fmt.Sprintf("%s|%s|%s", plan.PlanID, plan.ScheduledDate, plan.ScheduledTime)
	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/plans/plan/:planid/print
func PrintPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.ScheduledPlan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": ps.ByName("planid"), "user_id": userID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	qrPNG, err := qrcode.Encode(signedPlanPayload(plan), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Date Night Plan")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s at %s", plan.ScheduledDate, plan.ScheduledTime))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Dinner: %s", plan.RestaurantName))
	if plan.RestaurantAddress != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 10, plan.RestaurantAddress)
		pdf.SetFont("Arial", "", 12)
	}
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Activity: %s", plan.ActivityName))
	if plan.ActivityAddress != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 10, plan.ActivityAddress)
		pdf.SetFont("Arial", "", 12)
	}
	pdf.Ln(12)

	for label, number := range plan.ConfirmationNumbers {
		pdf.Cell(0, 10, fmt.Sprintf("Confirmation (%s): %s", label, number))
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=plan-"+plan.PlanID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
