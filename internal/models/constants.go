package models

// ActorRole constants for the role a mission needs.
const (
	ActorRoleWorker       = "worker"
	ActorRoleAdvisor      = "advisor"
	ActorRoleEntrepreneur = "entrepreneur"
)

// Specialization constants. "other" must be accompanied by free text.
const (
	SpecializationCropProduction      = "crop_production_worker"
	SpecializationLivestock           = "livestock_worker"
	SpecializationMechanizedSoil      = "mechanized_soil_worker"
	SpecializationSpecializedCrop     = "specialized_crop_worker"
	SpecializationSeasonalHarvest     = "seasonal_harvest_worker"
	SpecializationEquipmentTechnician = "agricultural_equipment_technician"
	SpecializationCropProtection      = "crop_protection_advisor"
	SpecializationAgriculturalFinance = "agricultural_finance_advisor"
	SpecializationFarmManagement      = "farm_management_advisor"
	SpecializationSoilScience         = "soil_science_advisor"
	SpecializationHorticulture        = "horticulture_advisor"
	SpecializationLivestockHealth     = "livestock_health_advisor"
	SpecializationOther               = "other"
)

// ExperienceLevel constants.
const (
	ExperienceLevelStarter   = "starter"
	ExperienceLevelQualified = "qualified"
	ExperienceLevelExpert    = "expert"
)

// SurfaceUnit constants.
const (
	SurfaceUnitHectares    = "hectares"
	SurfaceUnitSquareMeter = "square_meter"
)

// Advantage tags an employer can offer on a mission.
const (
	AdvantageMeal             = "meal"
	AdvantageAccommodation    = "accommodation"
	AdvantageTransport        = "transport"
	AdvantagePerformanceBonus = "performance_bonus"
	AdvantageWelcomeGift      = "welcome_gift"
)

// MissionStatus constants. Transitions are backend controlled.
const (
	MissionStatusInReview  = "in_review"
	MissionStatusOnline    = "online"
	MissionStatusAccepted  = "accepted"
	MissionStatusRejected  = "rejected"
	MissionStatusCompleted = "completed"
	MissionStatusRemoved   = "removed"
)

// TrackingStatus constants. Completed is terminal.
const (
	TrackingStatusActive    = "active"
	TrackingStatusPaused    = "paused"
	TrackingStatusCompleted = "completed"
)

// PriceStatus tags persisted price components.
const (
	PriceStatusCurrent    = "current"
	PriceStatusNotCurrent = "not_current"
)

// UserRole constants for accounts.
const (
	UserRoleWorker       = "worker"
	UserRoleAdvisor      = "advisor"
	UserRoleEntrepreneur = "entrepreneur"
	UserRoleAdmin        = "admin"
)

// ValidActorRoles lists roles accepted on a draft.
var ValidActorRoles = map[string]struct{}{
	ActorRoleWorker:       {},
	ActorRoleAdvisor:      {},
	ActorRoleEntrepreneur: {},
}

// ValidSpecializations lists the closed specialization set.
var ValidSpecializations = map[string]struct{}{
	SpecializationCropProduction:      {},
	SpecializationLivestock:           {},
	SpecializationMechanizedSoil:      {},
	SpecializationSpecializedCrop:     {},
	SpecializationSeasonalHarvest:     {},
	SpecializationEquipmentTechnician: {},
	SpecializationCropProtection:      {},
	SpecializationAgriculturalFinance: {},
	SpecializationFarmManagement:      {},
	SpecializationSoilScience:         {},
	SpecializationHorticulture:        {},
	SpecializationLivestockHealth:     {},
	SpecializationOther:               {},
}

// ValidExperienceLevels lists valid experience levels.
var ValidExperienceLevels = map[string]struct{}{
	ExperienceLevelStarter:   {},
	ExperienceLevelQualified: {},
	ExperienceLevelExpert:    {},
}

// ValidSurfaceUnits lists valid surface units.
var ValidSurfaceUnits = map[string]struct{}{
	SurfaceUnitHectares:    {},
	SurfaceUnitSquareMeter: {},
}

// ValidAdvantages lists valid advantage tags.
var ValidAdvantages = map[string]struct{}{
	AdvantageMeal:             {},
	AdvantageAccommodation:    {},
	AdvantageTransport:        {},
	AdvantagePerformanceBonus: {},
	AdvantageWelcomeGift:      {},
}

// ValidMissionStatuses lists valid mission statuses.
var ValidMissionStatuses = map[string]struct{}{
	MissionStatusInReview:  {},
	MissionStatusOnline:    {},
	MissionStatusAccepted:  {},
	MissionStatusRejected:  {},
	MissionStatusCompleted: {},
	MissionStatusRemoved:   {},
}

// ValidTrackingStatuses lists valid tracking statuses.
var ValidTrackingStatuses = map[string]struct{}{
	TrackingStatusActive:    {},
	TrackingStatusPaused:    {},
	TrackingStatusCompleted: {},
}

// RoleRequiresSpecialization reports whether a role must carry a specialization.
// Entrepreneur missions describe the work in free text and carry none.
func RoleRequiresSpecialization(role string) bool {
	return role == ActorRoleWorker || role == ActorRoleAdvisor
}
