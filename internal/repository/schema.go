package repository

// Schema creates the tables read by the repositories. It is idempotent.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS contractors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		external_crm_id VARCHAR(64),
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		gender VARCHAR(32) NOT NULL DEFAULT '',
		city VARCHAR(255) NOT NULL DEFAULT '',
		state VARCHAR(64) NOT NULL DEFAULT '',
		postal_code VARCHAR(16) NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		title VARCHAR(255) NOT NULL DEFAULT '',
		years_of_experience INTEGER,
		qualifications TEXT NOT NULL DEFAULT '',
		languages TEXT[] NOT NULL DEFAULT '{}',
		has_vehicle BOOLEAN NOT NULL DEFAULT FALSE,
		about TEXT NOT NULL DEFAULT '',
		fun_fact TEXT NOT NULL DEFAULT '',
		hobbies TEXT NOT NULL DEFAULT '',
		what_makes_me_unique TEXT NOT NULL DEFAULT '',
		profile_image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_synced_at TIMESTAMPTZ,
		deleted_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS contractors_created_at_idx ON contractors (created_at DESC, id DESC) WHERE deleted_at IS NULL;
	CREATE INDEX IF NOT EXISTS contractors_lat_lon_idx ON contractors (latitude, longitude) WHERE deleted_at IS NULL;

	CREATE TABLE IF NOT EXISTS localities (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		state VARCHAR(8) NOT NULL,
		postcode VARCHAR(8) NOT NULL DEFAULT '',
		search_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('simple', name || ' ' || state || ' ' || postcode)
		) STORED,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS localities_geom_idx ON localities USING GIST (geom);
	CREATE INDEX IF NOT EXISTS localities_search_tsvector_idx ON localities USING GIN (search_tsvector);
`
