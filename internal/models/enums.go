package models

// SearchType narrows an inventory search.
type SearchType string

const (
	SearchGeneral     SearchType = "GENERAL"
	SearchByTitle     SearchType = "BY_TITLE"
	SearchByAuthor    SearchType = "BY_AUTHOR"
	SearchByLocation  SearchType = "BY_LOCATION"
	SearchByCondition SearchType = "BY_CONDITION"
	SearchRecent      SearchType = "RECENT"
	SearchLowStock    SearchType = "LOW_STOCK"
)

// UpdateType names the field an update command targets.
type UpdateType string

const (
	UpdateGeneral   UpdateType = "GENERAL"
	UpdatePrice     UpdateType = "PRICE"
	UpdateQuantity  UpdateType = "QUANTITY"
	UpdateLocation  UpdateType = "LOCATION"
	UpdateCondition UpdateType = "CONDITION"
)

// AnalyticsType narrows an aggregate statistics request.
type AnalyticsType string

const (
	AnalyticsGeneral        AnalyticsType = "GENERAL"
	AnalyticsCount          AnalyticsType = "COUNT"
	AnalyticsValue          AnalyticsType = "VALUE"
	AnalyticsByCondition    AnalyticsType = "BY_CONDITION"
	AnalyticsByLocation     AnalyticsType = "BY_LOCATION"
	AnalyticsLowStock       AnalyticsType = "LOW_STOCK"
	AnalyticsRecentActivity AnalyticsType = "RECENT_ACTIVITY"
)

// ExportType narrows an export/backup request.
type ExportType string

const (
	ExportFull        ExportType = "FULL"
	ExportByCondition ExportType = "BY_CONDITION"
	ExportByLocation  ExportType = "BY_LOCATION"
	ExportRecent      ExportType = "RECENT"
)

// BatchOperationType names the multi-record operation requested.
type BatchOperationType string

const (
	BatchAddMultiple    BatchOperationType = "ADD_MULTIPLE"
	BatchUpdateMultiple BatchOperationType = "UPDATE_MULTIPLE"
	BatchDeleteMultiple BatchOperationType = "DELETE_MULTIPLE"
	BatchMoveMultiple   BatchOperationType = "MOVE_MULTIPLE"
)

// Condition is the physical condition of a book. The empty string means the
// condition was not mentioned.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionUsed    Condition = "Used"
	ConditionDamaged Condition = "Damaged"
)

// ValidConditions lists the accepted condition values in a fixed order.
var ValidConditions = []Condition{ConditionNew, ConditionUsed, ConditionDamaged}

// IsValidCondition reports whether c is one of the accepted conditions.
func IsValidCondition(c Condition) bool {
	for _, v := range ValidConditions {
		if c == v {
			return true
		}
	}
	return false
}

// Language classifies the script of a message.
type Language string

const (
	LanguageEnglish Language = "ENGLISH"
	LanguageKannada Language = "KANNADA"
	LanguageMixed   Language = "MIXED"
)
