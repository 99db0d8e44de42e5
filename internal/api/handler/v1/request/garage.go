package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTeamRequest struct {
	Name string `json:"name"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type CreateSponsorRequest struct {
	Name string `json:"name"`
}

func (req *CreateSponsorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type CreateContributionRequest struct {
	SponsorID   uint   `json:"sponsor_id"`
	TeamID      uint   `json:"team_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (req *CreateContributionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SponsorID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Amount, validation.Required, validation.Min(1)),
		validation.Field(&req.Description, validation.Length(0, 200)),
	)
}

type CreatePartRequest struct {
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	Power      int    `json:"power"`
	Aero       int    `json:"aero"`
	Maneuver   int    `json:"maneuver"`
	StoreStock int    `json:"store_stock"`
}

func (req *CreatePartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Category, validation.Required,
			validation.In("power_unit", "aerodynamics", "wheels", "suspension", "gearbox")),
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.Power, validation.Min(0), validation.Max(9)),
		validation.Field(&req.Aero, validation.Min(0), validation.Max(9)),
		validation.Field(&req.Maneuver, validation.Min(0), validation.Max(9)),
		validation.Field(&req.StoreStock, validation.Min(0)),
	)
}

type UpdatePartRequest struct {
	Price    int64 `json:"price"`
	Power    int   `json:"power"`
	Aero     int   `json:"aero"`
	Maneuver int   `json:"maneuver"`
}

func (req *UpdatePartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.Power, validation.Min(0), validation.Max(9)),
		validation.Field(&req.Aero, validation.Min(0), validation.Max(9)),
		validation.Field(&req.Maneuver, validation.Min(0), validation.Max(9)),
	)
}

type RestockPartRequest struct {
	Quantity int `json:"quantity"`
}

func (req *RestockPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type PurchasePartRequest struct {
	TeamID uint `json:"team_id"`
	PartID uint `json:"part_id"`
}

func (req *PurchasePartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.PartID, validation.Required, validation.Min(uint(1))),
	)
}

type InstallPartRequest struct {
	CarID  uint `json:"car_id"`
	PartID uint `json:"part_id"`
	TeamID uint `json:"team_id"`
}

func (req *InstallPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CarID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.PartID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
	)
}

type ReplacePartRequest struct {
	CarID     uint `json:"car_id"`
	OldPartID uint `json:"old_part_id"`
	NewPartID uint `json:"new_part_id"`
	TeamID    uint `json:"team_id"`
}

func (req *ReplacePartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CarID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.OldPartID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.NewPartID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
	)
}

type UninstallPartRequest struct {
	CarID  uint `json:"car_id"`
	PartID uint `json:"part_id"`
	TeamID uint `json:"team_id"`
}

func (req *UninstallPartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CarID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.PartID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
	)
}
