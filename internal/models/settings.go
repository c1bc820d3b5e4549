package models

type Settings struct {
	Timezone        string `json:"timezone"`
	DailyKcalTarget int    `json:"daily_kcal_target"`
	WeightUnit      string `json:"weight_unit"` // kg or lb
}
