package config

import (
	"github.com/spf13/viper"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/family"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
)

// Classification holds the tunables injected into the family grouper and
// status evaluator. They are configuration, not hard-coded literals, so
// deployments can adjust them without a rebuild.
type Classification struct {
	Sentinels       hierarchy.Sentinels
	DetailThreshold int
}

// LoadClassification reads classification tunables from viper, applying
// defaults for anything unset.
func LoadClassification() Classification {
	viper.SetDefault("classification.detail_threshold", family.DefaultDetailThreshold)

	defaults := hierarchy.DefaultSentinels()
	viper.SetDefault("classification.sentinels.type", defaults.Type)
	viper.SetDefault("classification.sentinels.category", defaults.Category)
	viper.SetDefault("classification.sentinels.final", defaults.Final)

	return Classification{
		DetailThreshold: viper.GetInt("classification.detail_threshold"),
		Sentinels: hierarchy.Sentinels{
			Type:     viper.GetString("classification.sentinels.type"),
			Category: viper.GetString("classification.sentinels.category"),
			Final:    viper.GetString("classification.sentinels.final"),
		},
	}
}

// FamilyConfig converts the tunables into the grouper's config shape.
func (c Classification) FamilyConfig() family.Config {
	return family.Config{
		Sentinels:       c.Sentinels,
		DetailThreshold: c.DetailThreshold,
	}
}
