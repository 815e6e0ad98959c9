package source

// Fixed analysis queries over the job postings star schema
// (job_postings_fact, company_dim, skills_dim, skills_job_dim).
// Column aliases are the field names the charts read.
// Plain ANSI SQL: runs on PostgreSQL and on a libsql/SQLite copy of the data.

const topPayingJobsQuery = `
SELECT
    job_title_short AS job_title,
    COALESCE(company_dim.name, '') AS company_name,
    salary_year_avg
FROM job_postings_fact
LEFT JOIN company_dim ON job_postings_fact.company_id = company_dim.company_id
WHERE job_title_short = 'Data Analyst'
  AND salary_year_avg IS NOT NULL
ORDER BY salary_year_avg DESC
LIMIT 10`

const topDemandedSkillsQuery = `
SELECT
    sd.skills AS skill,
    COUNT(sjd.job_id) AS demand_count
FROM skills_job_dim sjd
INNER JOIN skills_dim sd ON sjd.skill_id = sd.skill_id
INNER JOIN job_postings_fact jpf ON sjd.job_id = jpf.job_id
WHERE jpf.job_title_short = 'Data Analyst'
GROUP BY sd.skills
ORDER BY demand_count DESC
LIMIT 10`

const topPayingSkillsQuery = `
SELECT
    sd.skills AS skill,
    AVG(jpf.salary_year_avg) AS avg_salary
FROM skills_job_dim sjd
INNER JOIN skills_dim sd ON sjd.skill_id = sd.skill_id
INNER JOIN job_postings_fact jpf ON sjd.job_id = jpf.job_id
WHERE jpf.job_title_short = 'Data Analyst'
  AND jpf.salary_year_avg IS NOT NULL
GROUP BY sd.skills
ORDER BY avg_salary DESC
LIMIT 10`

const optimalSkillsQuery = `
SELECT
    sd.skills AS skill,
    COUNT(sjd.job_id) AS demand_count,
    AVG(jpf.salary_year_avg) AS avg_salary
FROM skills_job_dim sjd
INNER JOIN skills_dim sd ON sjd.skill_id = sd.skill_id
INNER JOIN job_postings_fact jpf ON sjd.job_id = jpf.job_id
WHERE jpf.job_title_short = 'Data Analyst'
  AND jpf.salary_year_avg IS NOT NULL
GROUP BY sd.skills
HAVING COUNT(sjd.job_id) > 10
ORDER BY avg_salary DESC
LIMIT 10`

var queries = map[string]string{
	TopPayingJobs:     topPayingJobsQuery,
	TopDemandedSkills: topDemandedSkillsQuery,
	TopPayingSkills:   topPayingSkillsQuery,
	OptimalSkills:     optimalSkillsQuery,
}
