package storage

// Table layout mirrors the four-entity model: categories own
// subcategories and cards, review_sessions record completed passes.
// The wrong/right columns hold JSON arrays of card ids.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    createdAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS subcategories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    categoryId INTEGER NOT NULL,
    createdAt DATETIME NOT NULL,

    FOREIGN KEY(categoryId) REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    definition TEXT NOT NULL,
    lastReviewed DATETIME,
    numCorrect INTEGER NOT NULL DEFAULT 0,
    numIncorrect INTEGER NOT NULL DEFAULT 0,
    clue TEXT,
    categoryId INTEGER NOT NULL,
    subcategoryId INTEGER,
    createdAt DATETIME NOT NULL,

    FOREIGN KEY(categoryId) REFERENCES categories(id),
    FOREIGN KEY(subcategoryId) REFERENCES subcategories(id)
);

CREATE TABLE IF NOT EXISTS review_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    categoryId INTEGER,
    subcategoryId INTEGER,
    reviewType TEXT NOT NULL,
    wrong TEXT,
    right TEXT,
    reviewedAt DATETIME,
    createdAt DATETIME NOT NULL,

    FOREIGN KEY(categoryId) REFERENCES categories(id),
    FOREIGN KEY(subcategoryId) REFERENCES subcategories(id)
);
`

const dropTables = `
DROP TABLE IF EXISTS review_sessions;
DROP TABLE IF EXISTS cards;
DROP TABLE IF EXISTS subcategories;
DROP TABLE IF EXISTS categories;
`
