// ABOUTME: SQL schema definition for the gym database.
// ABOUTME: Workouts, exercises, sets, cardio, templates, programs and records.
package db

// Tables are created in dependency order. Indexes here only touch columns that
// have existed since the first schema revision; indexes on migrated columns
// live in migrate.go.
const schema = `
CREATE TABLE IF NOT EXISTS programs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    created_at TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 0,
    image_index INTEGER NOT NULL DEFAULT -1,
    image_uri TEXT
);

CREATE TABLE IF NOT EXISTS templates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS template_exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    template_id INTEGER NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    default_sets INTEGER NOT NULL DEFAULT 3,
    note TEXT
);

CREATE TABLE IF NOT EXISTS program_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    program_id INTEGER NOT NULL REFERENCES programs(id),
    template_id INTEGER REFERENCES templates(id) ON DELETE SET NULL,
    day_index INTEGER NOT NULL,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS program_day_exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    program_day_id INTEGER NOT NULL REFERENCES program_days(id),
    name TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    default_sets INTEGER NOT NULL DEFAULT 3,
    note TEXT
);

CREATE TABLE IF NOT EXISTS workouts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    note TEXT,
    program_id INTEGER REFERENCES programs(id) ON DELETE SET NULL,
    program_day_index INTEGER
);

CREATE TABLE IF NOT EXISTS exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    note TEXT
);

CREATE TABLE IF NOT EXISTS sets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    exercise_id INTEGER NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
    weight REAL NOT NULL DEFAULT 0,
    reps INTEGER NOT NULL DEFAULT 0,
    order_index INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cardio_activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
    activity_type TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL DEFAULT 0,
    distance_meters REAL,
    calories_burned INTEGER,
    avg_heart_rate INTEGER,
    notes TEXT,
    order_index INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS personal_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    exercise_name TEXT NOT NULL,
    weight REAL NOT NULL,
    reps INTEGER NOT NULL,
    estimated_1rm REAL NOT NULL,
    achieved_at TEXT NOT NULL,
    workout_id INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workouts_finished ON workouts(finished_at);
CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at);
CREATE INDEX IF NOT EXISTS idx_exercises_workout ON exercises(workout_id, order_index);
CREATE INDEX IF NOT EXISTS idx_sets_exercise ON sets(exercise_id, order_index);
CREATE INDEX IF NOT EXISTS idx_cardio_workout ON cardio_activities(workout_id, order_index);
CREATE INDEX IF NOT EXISTS idx_template_exercises_template ON template_exercises(template_id, order_index);
CREATE INDEX IF NOT EXISTS idx_program_days_program ON program_days(program_id, day_index);
CREATE INDEX IF NOT EXISTS idx_program_day_exercises_day ON program_day_exercises(program_day_id, order_index);
CREATE INDEX IF NOT EXISTS idx_personal_records_name ON personal_records(exercise_name COLLATE NOCASE, estimated_1rm);
`

// gymTables lists every table owned by the store, in creation order.
var gymTables = []string{
	"programs",
	"templates",
	"template_exercises",
	"program_days",
	"program_day_exercises",
	"workouts",
	"exercises",
	"sets",
	"cardio_activities",
	"personal_records",
}
