package handlers

import (
	"net/http"

	"marketplace/internal/services"

	"github.com/gin-gonic/gin"
)

func planService(c *gin.Context) services.PlanService {
	return services.PlanService{RequestID: requestID(c)}
}

// GET /api/plans
//
// Public catalog: only ACTIVE plans.
func ListActivePlans(c *gin.Context) {
	plans, err := planService(c).ListActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// GET /api/plans/:id
func GetPlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := planService(c).GetPlan(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// POST /api/host/plans
func CreatePlan(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	var in services.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return
	}

	plan, err := planService(c).CreatePlan(rc.UserID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// PUT /api/host/plans/:id
func UpdatePlan(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var in services.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return
	}

	plan, err := planService(c).UpdatePlan(rc.UserID, id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// POST /api/host/plans/:id/toggle
func TogglePlan(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := planService(c).TogglePlan(rc.UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// GET /api/host/plans
func ListMyPlans(c *gin.Context) {
	rc, ok := mustAuth(c)
	if !ok {
		return
	}

	plans, err := planService(c).ListForHost(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// GET /api/admin/plans
func ListAllPlans(c *gin.Context) {
	plans, err := planService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// POST /api/admin/plans/:id/approve
func ApprovePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := planService(c).ApprovePlan(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan approved and activated", "plan": plan})
}
