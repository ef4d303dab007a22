package store

const userColumns = `user_id, email, full_name, password_hash, role, is_blocked, is_whitelisted,
    mentor_id, profile_image_url, created_at, updated_at`

const (
	createUser = `INSERT INTO users (email, full_name, role, is_whitelisted)
    VALUES (LOWER($1), $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE LOWER(email) = LOWER($1);`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	completeRegistration = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1 AND password_hash IS NULL;`

	updatePasswordHash = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	updateProfile = `UPDATE users
    SET full_name = $2, email = LOWER($3), updated_at = NOW()
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	setBlocked = `UPDATE users
    SET is_blocked = $2, updated_at = NOW()
    WHERE user_id = $1;`

	updateRole = `UPDATE users
    SET role = $2, updated_at = NOW()
    WHERE user_id = $1;`

	detachMentees = `UPDATE users
    SET mentor_id = NULL, updated_at = NOW()
    WHERE mentor_id = $1;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`

	listMentees = `SELECT u.user_id, u.full_name, u.email, u.profile_image_url, u.mentor_id, m.full_name AS mentor_name
    FROM users u
    LEFT JOIN users m ON m.user_id = u.mentor_id
    WHERE u.mentor_id = $1
    ORDER BY u.full_name, u.user_id;`

	listMentors = `SELECT user_id, full_name, email, profile_image_url, mentor_id, NULL::TEXT AS mentor_name
    FROM users
    WHERE role = 'Mentor' AND is_blocked = FALSE
    ORDER BY full_name, user_id;`

	listStudents = `SELECT u.user_id, u.full_name, u.email, u.profile_image_url, u.mentor_id, m.full_name AS mentor_name
    FROM users u
    LEFT JOIN users m ON m.user_id = u.mentor_id
    WHERE u.role = 'User'
    ORDER BY u.full_name, u.user_id;`
)

const refreshTokenColumns = `id, user_id, token_hash, expires_at, is_revoked, created_at, created_by_ip`

const (
	createRefreshToken = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at, is_revoked, created_at, created_by_ip)
    VALUES ($1, $2, $3, FALSE, $4, $5)
    RETURNING id;`

	findRefreshTokenByHash = `SELECT ` + refreshTokenColumns + `
    FROM refresh_tokens
    WHERE token_hash = $1;`

	// revokeActiveRefreshToken is the compare-and-swap step of rotation:
	// exactly one concurrent caller observes one affected row.
	revokeActiveRefreshToken = `UPDATE refresh_tokens
    SET is_revoked = TRUE
    WHERE id = $1 AND is_revoked = FALSE;`

	revokeRefreshToken = `UPDATE refresh_tokens
    SET is_revoked = TRUE
    WHERE id = $1;`

	revokeAllUserTokens = `UPDATE refresh_tokens
    SET is_revoked = TRUE
    WHERE user_id = $1 AND is_revoked = FALSE;`

	deleteStaleTokens = `DELETE FROM refresh_tokens
    WHERE expires_at < $1 OR (is_revoked AND created_at < $1);`
)

const notificationColumns = `id, user_id, title, message, type, is_read, created_at, read_at`

const (
	createNotification = `INSERT INTO notifications (user_id, title, message, type, created_at)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id;`

	listNotifications = `SELECT ` + notificationColumns + `
    FROM notifications
    WHERE user_id = $1
    ORDER BY created_at DESC, id DESC;`

	countUnread = `SELECT COUNT(*)
    FROM notifications
    WHERE user_id = $1 AND is_read = FALSE;`

	markRead = `UPDATE notifications
    SET is_read = TRUE, read_at = COALESCE(read_at, $3)
    WHERE user_id = $1 AND id = $2;`

	markAllRead = `UPDATE notifications
    SET is_read = TRUE, read_at = $2
    WHERE user_id = $1 AND is_read = FALSE;`

	deleteNotification = `DELETE FROM notifications
    WHERE user_id = $1 AND id = $2;`
)

const studentProfileColumns = `id, user_id, email, phone, address, branch, space, week, advisor, mentor,
    qualification, institution, pass_out_year, guardian_name, guardian_relationship, guardian_phone,
    created_at, updated_at`

const (
	createStudentProfile = `INSERT INTO student_profiles (user_id, email, phone, address, branch, space, week,
    advisor, mentor, qualification, institution, pass_out_year, guardian_name, guardian_relationship,
    guardian_phone, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
    RETURNING id, created_at, updated_at;`

	findStudentProfileByUserID = `SELECT ` + studentProfileColumns + `
    FROM student_profiles
    WHERE user_id = $1;`

	updateStudentProfile = `UPDATE student_profiles
    SET email = $2, phone = $3, address = $4, branch = $5, space = $6, week = $7, advisor = $8,
        mentor = $9, qualification = $10, institution = $11, pass_out_year = $12, guardian_name = $13,
        guardian_relationship = $14, guardian_phone = $15, updated_at = $16
    WHERE user_id = $1
    RETURNING id, created_at, updated_at;`

	deleteStudentProfile = `DELETE FROM student_profiles
    WHERE id = $1;`
)
