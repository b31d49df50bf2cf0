package startups

// StartupsQuery lists every startup document, newest first, with the author dereferenced.
const StartupsQuery = `*[_type == "startup"] | order(_createdAt desc) {
    _id,
    title,
    slug,
    _createdAt,
    author -> {
        _id, name, image, bio
    },
    views,
    description,
    category,
    image
}`

// StartupByIDQuery fetches at most one startup with the pitch included. Takes $id.
const StartupByIDQuery = `*[_type == "startup" && _id == $id][0] {
    _id,
    title,
    slug,
    _createdAt,
    author -> {
        _id, username, image, bio
    },
    views,
    description,
    category,
    image,
    pitch
}`
