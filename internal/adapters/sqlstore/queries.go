package sqlstore

// Aggregates are selected as raw moments (count, sum, sum of squares) so the
// same statements run on every dialect; mean and standard deviation are
// derived in domain. Milk stays in grams here.

const periodMoments = `
    COUNT(p_fdays) AS days_n,
    SUM(p_fdays) AS days_sum,
    SUM(p_fdays * 1.0 * p_fdays) AS days_sumsq,
    COUNT(p_fmilk) AS milk_n,
    SUM(p_fmilk) AS milk_sum,
    SUM(p_fmilk * 1.0 * p_fmilk) AS milk_sumsq,
    COUNT(p_males + p_females) AS births_n,
    SUM(p_males + p_females) AS births_sum,
    SUM((p_males + p_females) * 1.0 * (p_males + p_females)) AS births_sumsq,
    COUNT(p_bdate) AS count_births`

const queryYearlyStats = `
SELECT
    p_year,` + periodMoments + `
FROM production
JOIN herds ON production.p_herd_id = herds.h_id
WHERE herds.h_breed_id = :breed
  AND production.p_lact BETWEEN :lact_from AND :lact_to
  AND production.p_fdays >= :min_days
GROUP BY p_year
ORDER BY p_year`

const queryTotals = `
SELECT` + periodMoments + `,
    COUNT(DISTINCT p_year) AS total_years
FROM production
JOIN herds ON production.p_herd_id = herds.h_id
WHERE herds.h_breed_id = :breed
  AND production.p_lact BETWEEN :lact_from AND :lact_to
  AND production.p_fdays >= :min_days`

const queryLactationStats = `
SELECT
    p_lact,` + periodMoments + `
FROM production
JOIN herds ON production.p_herd_id = herds.h_id
WHERE herds.h_breed_id = :breed
  AND p_year BETWEEN :year_from AND :year_to
  AND production.p_fdays >= :min_days
GROUP BY p_lact
ORDER BY p_lact`

const queryMonthlyStats = `
SELECT
    {month} AS month_bdate,` + periodMoments + `
FROM production
JOIN herds ON production.p_herd_id = herds.h_id
WHERE herds.h_breed_id = :breed
  AND production.p_lact BETWEEN :lact_from AND :lact_to
  AND p_year BETWEEN :year_from AND :year_to
  AND p_bdate IS NOT NULL
GROUP BY {month}
ORDER BY month_bdate`

const queryYieldClasses = `
SELECT
    {bin} AS class_no,
    COUNT(*) AS total_animals,
    COUNT(p_fdays) AS days_n,
    SUM(p_fdays) AS days_sum,
    SUM(p_fdays * 1.0 * p_fdays) AS days_sumsq,
    COUNT(p_fmilk) AS milk_n,
    SUM(p_fmilk) AS milk_sum,
    SUM(p_fmilk * 1.0 * p_fmilk) AS milk_sumsq
FROM production
JOIN herds ON production.p_herd_id = herds.h_id
WHERE herds.h_breed_id = :breed
  AND p_fmilk IS NOT NULL
  AND p_lact BETWEEN :lact_from AND :lact_to
  AND p_year BETWEEN :year_from AND :year_to
GROUP BY {bin}
ORDER BY class_no`

const queryBreeds = `
SELECT id, name
FROM breed
ORDER BY name`

const queryYears = `
SELECT DISTINCT p_year
FROM production
WHERE p_year IS NOT NULL
ORDER BY p_year`

const queryAreas = `
SELECT ar_id, ar_name
FROM area
ORDER BY ar_name`
