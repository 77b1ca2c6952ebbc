package services

import (
	"encoding/json"
	"fmt"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/insights"
	"gorm.io/datatypes"
)

func marshalScoreSet(scores assessment.ScoreSet) (datatypes.JSON, error) {
	data, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score set: %w", err)
	}
	return datatypes.JSON(data), nil
}

func unmarshalScoreSet(data datatypes.JSON) (assessment.ScoreSet, error) {
	var scores assessment.ScoreSet
	if len(data) == 0 {
		return scores, fmt.Errorf("score set is empty")
	}
	if err := json.Unmarshal(data, &scores); err != nil {
		return scores, fmt.Errorf("failed to unmarshal score set: %w", err)
	}
	return scores, nil
}

func marshalBundle(bundle insights.Bundle) (datatypes.JSON, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insight bundle: %w", err)
	}
	return datatypes.JSON(data), nil
}

func unmarshalBundle(data datatypes.JSON) (insights.Bundle, error) {
	var bundle insights.Bundle
	if len(data) == 0 {
		return bundle, fmt.Errorf("insight bundle is empty")
	}
	if err := json.Unmarshal(data, &bundle); err != nil {
		return bundle, fmt.Errorf("failed to unmarshal insight bundle: %w", err)
	}
	return bundle, nil
}
