package source

import (
	"context"
	"fmt"

	"job-charts/internal/dataset"
)

// Sample serves fixed illustrative tables when no real data is available
type Sample struct{}

func (Sample) Load(_ context.Context, name string) (*dataset.Dataset, error) {
	build, ok := sampleTables[name]
	if !ok {
		return nil, fmt.Errorf("sample %s: %w", name, ErrUnknownDataset)
	}
	return build(), nil
}

var (
	text   = dataset.KindString
	number = dataset.KindNumber
)

var sampleTables = map[string]func() *dataset.Dataset{
	TopPayingJobs: func() *dataset.Dataset {
		return dataset.MustNew(TopPayingJobs,
			[]dataset.Column{{Name: "job_title", Kind: text}, {Name: "company_name", Kind: text}, {Name: "salary_year_avg", Kind: number}},
			[][]any{
				{"Data Analyst", "Mantys", 650000},
				{"Data Analyst", "Meta", 336500},
				{"Senior Data Analyst", "AT&T", 255829},
				{"Data Analyst", "Pinterest", 232423},
				{"Data Analyst", "TikTok", 225000},
				{"Principal Data Analyst", "SmartAsset", 205000},
				{"Data Analyst", "Citigroup", 200000},
				{"Lead Data Analyst", "Applovin", 190000},
				{"Data Analyst", "UCLA Health", 185000},
				{"Data Analyst", "Getir", 180000},
			})
	},
	TopDemandedSkills: func() *dataset.Dataset {
		return dataset.MustNew(TopDemandedSkills,
			[]dataset.Column{{Name: "skill", Kind: text}, {Name: "demand_count", Kind: number}},
			[][]any{
				{"SQL", 7291},
				{"Excel", 4611},
				{"Python", 4330},
				{"Tableau", 2464},
				{"Power BI", 1891},
				{"R", 1482},
				{"SAS", 1000},
				{"Looker", 850},
				{"Azure", 800},
				{"AWS", 750},
			})
	},
	TopPayingSkills: func() *dataset.Dataset {
		return dataset.MustNew(TopPayingSkills,
			[]dataset.Column{{Name: "skill", Kind: text}, {Name: "avg_salary", Kind: number}},
			[][]any{
				{"pyspark", 208172},
				{"bitbucket", 189155},
				{"couchbase", 160515},
				{"watson", 160515},
				{"datarobot", 155486},
				{"gitlab", 154500},
				{"swift", 153750},
				{"jupyter", 152777},
				{"pandas", 151821},
				{"elasticsearch", 145000},
			})
	},
	OptimalSkills: func() *dataset.Dataset {
		return dataset.MustNew(OptimalSkills,
			[]dataset.Column{{Name: "skill", Kind: text}, {Name: "demand_count", Kind: number}, {Name: "avg_salary", Kind: number}},
			[][]any{
				{"Go", 27, 115320},
				{"Confluence", 62, 114210},
				{"Hadoop", 22, 113193},
				{"Snowflake", 37, 112948},
				{"Azure", 34, 111225},
				{"BigQuery", 13, 109654},
				{"AWS", 32, 108317},
				{"Java", 17, 106906},
				{"Scala", 15, 124903},
				{"Kafka", 40, 129999},
			})
	},
}
