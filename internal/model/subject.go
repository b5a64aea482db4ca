package model

// Subject 学科目录，如 数学1A/2B/2C，属于只读参照数据
type Subject struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code      string `gorm:"size:10;unique;not null" json:"code"`
	Name      string `gorm:"size:100;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}

func (Subject) TableName() string {
	return "subjects"
}
